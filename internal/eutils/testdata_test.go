// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

const sampleArticleXML = `<?xml version="1.0" ?>
<!DOCTYPE PubmedArticleSet PUBLIC "-//NLM//DTD PubMedArticle, 1st January 2024//EN" "https://dtd.nlm.nih.gov/ncbi/pubmed/out/pubmed_240101.dtd">
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation Status="MEDLINE" Owner="NLM">
      <PMID Version="1">33176117</PMID>
      <DateCompleted><Year>2021</Year><Month>01</Month><Day>12</Day></DateCompleted>
      <Article PubModel="Print-Electronic">
        <Journal>
          <ISSN IssnType="Electronic">1097-4172</ISSN>
          <JournalIssue CitedMedium="Internet">
            <Volume>183</Volume>
            <Issue>4</Issue>
            <PubDate><Year>2020</Year><Month>Nov</Month><Day>12</Day></PubDate>
          </JournalIssue>
          <Title>Cell</Title>
          <ISOAbbreviation>Cell</ISOAbbreviation>
        </Journal>
        <ArticleTitle>Structural basis of <i>SARS-CoV-2</i> spike binding.</ArticleTitle>
        <AuthorList CompleteYN="Y">
          <Author ValidYN="Y"><LastName>Doe</LastName><ForeName>Jane</ForeName><Initials>J</Initials></Author>
          <Author ValidYN="Y"><LastName>Roe</LastName><ForeName>Richard A</ForeName><Initials>RA</Initials></Author>
          <Author ValidYN="Y"><CollectiveName>COVID-19 Genomics Consortium</CollectiveName></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

const emptyArticleSetXML = `<?xml version="1.0" ?>
<PubmedArticleSet></PubmedArticleSet>`

const sampleSearchXML = `<?xml version="1.0" encoding="UTF-8" ?>
<!DOCTYPE eSearchResult PUBLIC "-//NLM//DTD esearch 20060628//EN" "https://eutils.ncbi.nlm.nih.gov/eutils/dtd/20060628/esearch.dtd">
<eSearchResult><Count>1</Count><RetMax>1</RetMax><RetStart>0</RetStart><IdList>
<Id>31452104</Id>
</IdList></eSearchResult>`

const emptySearchXML = `<?xml version="1.0" encoding="UTF-8" ?>
<eSearchResult><Count>0</Count><RetMax>0</RetMax><RetStart>0</RetStart><IdList/>
<ErrorList><PhraseNotFound>nonsense-term</PhraseNotFound></ErrorList></eSearchResult>`
